/* utils.go
 * Utility functions used across the application
 * Authors: Zachary Bower
 */

package main

import (
	"fmt"
	"strings"
)

const (
	taskGenerate     = "generate"
	taskServe        = "serve"
	taskBloggerSync  = "blogger-sync"
	taskBloggerToken = "blogger-token"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// parseTask normalizes and validates the -task flag value
// Preconditions: Receives the raw flag string (case insensitive)
// Postconditions: Returns the canonical task name or an error for unknown tasks
func parseTask(str string) (string, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	switch str {
	case taskGenerate, taskServe, taskBloggerSync, taskBloggerToken:
		return str, nil
	}
	return "", fmt.Errorf("unknown task")
}
