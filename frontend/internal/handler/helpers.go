package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// splitAndTrim splits a comma separated form value, dropping blanks.
func splitAndTrim(input string) []string {
	var result []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// parseLimit reads the post window size from ?limit=, zero when absent or
// invalid.
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// wantsJSON is true for fetch requests from the page script.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func threadURL(id string) string {
	return "/thread/" + id
}
