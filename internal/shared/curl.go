// Utilities for parsing cURL commands.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// CurlRequest represents the pieces of a browser "Copy as cURL" command that
// matter for adopting an existing board session: the request headers and the
// bearer token carried in the Authorization header.
type CurlRequest struct {
	Headers map[string]string
	Token   string
}

// ParseCurlFile reads a file containing a cURL command and extracts its headers.
func ParseCurlFile(path string) (*CurlRequest, error) {
	content, err := VerifyAndReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseCurlCommand(content)
}

var curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)

// ParseCurlCommand parses a cURL command string and extracts headers and the
// bearer token, if present.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)

	matches := curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1)
	for _, match := range matches {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		headers[key] = value
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	req := &CurlRequest{Headers: headers}

	for key, value := range headers {
		if strings.EqualFold(key, "authorization") {
			req.Token = strings.TrimSpace(strings.TrimPrefix(value, "Bearer "))
			break
		}
	}

	return req, nil
}

// BearerToken returns the bearer token from the parsed command, or an error
// when the Authorization header was missing or not a bearer scheme.
func (c *CurlRequest) BearerToken() (string, error) {
	if c.Token == "" {
		return "", fmt.Errorf("%w: no bearer token in curl command", ErrInvalidInput)
	}
	return c.Token, nil
}
