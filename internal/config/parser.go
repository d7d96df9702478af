// Package config provides functionality for parsing and validating
// run configuration files (JSON/YAML).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DetectFormat returns the configuration format implied by the file
// extension: "json", "yaml", or "" when unknown.
func DetectFormat(filepath string) string {
	switch strings.ToLower(path.Ext(filepath)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// IsJSON reports whether the content looks like a JSON document.
func IsJSON(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// ParseJSONString parses JSON content into a generic configuration map.
func ParseJSONString(content string) *ParseResult {
	result := &ParseResult{Format: "json"}

	content = strings.TrimSpace(content)
	if content == "" {
		result.Errors = append(result.Errors, ParseError{
			Message: "empty content: expected JSON object",
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	var data interface{}
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		result.Errors = append(result.Errors, parseJSONError(err, content))
		return result
	}

	dataMap, ok := data.(map[string]interface{})
	if !ok {
		result.Errors = append(result.Errors, ParseError{
			Message: fmt.Sprintf("invalid configuration: expected JSON object, got %T", data),
			Type:    ErrorTypeFormat,
		})
		return result
	}

	result.Data = dataMap
	return result
}

// ParseYAMLString parses YAML content into a generic configuration map.
func ParseYAMLString(content string) *ParseResult {
	result := &ParseResult{Format: "yaml"}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, ParseError{
			Message: "empty content: expected YAML mapping",
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	var data interface{}
	if err := yaml.Unmarshal([]byte(content), &data); err != nil {
		result.Errors = append(result.Errors, ParseError{
			Message: fmt.Sprintf("YAML syntax error: %v", err),
			Type:    ErrorTypeSyntax,
		})
		return result
	}

	dataMap, ok := data.(map[string]interface{})
	if !ok {
		result.Errors = append(result.Errors, ParseError{
			Message: fmt.Sprintf("invalid configuration: expected YAML mapping, got %T", data),
			Type:    ErrorTypeFormat,
		})
		return result
	}

	result.Data = dataMap
	return result
}

// parseJSONError extracts line information from a JSON unmarshaling error.
func parseJSONError(err error, content string) ParseError {
	parseErr := ParseError{
		Message: err.Error(),
		Type:    ErrorTypeSyntax,
	}

	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		parseErr.Line = offsetToLine(content, syntaxErr.Offset)
		parseErr.Message = fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxErr.Offset, syntaxErr.Error())
	}
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		parseErr.Line = offsetToLine(content, typeErr.Offset)
		parseErr.Message = fmt.Sprintf("type error at field '%s': expected %s, got %s",
			typeErr.Field, typeErr.Type.String(), typeErr.Value)
	}

	return parseErr
}

// offsetToLine converts a byte offset to a 1-based line number.
func offsetToLine(content string, offset int64) int {
	if offset <= 0 {
		return 1
	}
	line := 1
	for i := int64(0); i < offset && i < int64(len(content)); i++ {
		if content[i] == '\n' {
			line++
		}
	}
	return line
}

// ParseConfig parses and validates a run configuration file.
// It auto-detects the format (JSON/YAML) based on file extension or
// content, validates the parsed data against the embedded schema, and
// decodes it into a typed RunConfig when everything checks out.
func ParseConfig(filepath string) *Result {
	result := &Result{FilePath: filepath}

	content, err := os.ReadFile(filepath)
	if err != nil {
		result.ParseErrors = append(result.ParseErrors, ParseError{
			Path:    filepath,
			Message: fmt.Sprintf("failed to read file: %v", err),
			Type:    ErrorTypeIO,
		})
		return result
	}

	return parseConfigContent(string(content), DetectFormat(filepath), filepath)
}

// ParseConfigString parses and validates configuration content from a
// string. If format is empty, it is auto-detected from the content.
func ParseConfigString(content string, format string) *Result {
	return parseConfigContent(content, format, "")
}

// parseConfigContent is the shared parse + validate + decode path.
func parseConfigContent(content, format, filepath string) *Result {
	result := &Result{FilePath: filepath}

	if format == "" {
		if IsJSON(content) {
			format = "json"
		} else {
			format = "yaml"
		}
	}

	var parseResult *ParseResult
	switch format {
	case "json":
		parseResult = ParseJSONString(content)
	default:
		parseResult = ParseYAMLString(content)
	}

	result.Data = parseResult.Data
	result.Format = parseResult.Format
	result.ParseErrors = parseResult.Errors
	for i := range result.ParseErrors {
		if result.ParseErrors[i].Path == "" {
			result.ParseErrors[i].Path = filepath
		}
	}
	if !parseResult.IsValid() {
		return result
	}

	validationResult := ValidateConfig(parseResult.Data)
	result.ValidationErrors = validationResult.Errors
	if !validationResult.Valid {
		return result
	}

	cfg := &RunConfig{}
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		// schema validation passed, so a decode failure here is a bug in
		// the schema/type mapping rather than a user error
		result.ParseErrors = append(result.ParseErrors, ParseError{
			Path:    filepath,
			Message: fmt.Sprintf("failed to decode configuration: %v", err),
			Type:    ErrorTypeFormat,
		})
		return result
	}
	result.Config = cfg
	return result
}
