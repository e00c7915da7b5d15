package utils

import (
	"encoding/json"

	"k8s.io/klog/v2"
)

// IsJSON reports whether s is a well-formed JSON document.
func IsJSON(s string) bool {
	return json.Valid([]byte(s))
}

func ToJSON(v any) string {
	jsonData, err := json.Marshal(v)
	if err != nil {
		klog.Errorf("json marshal failed: %v", err)
		return ""
	}
	return string(jsonData)
}
