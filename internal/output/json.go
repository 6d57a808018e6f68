package output

import "encoding/json"

// JSONFormatter renders the full report as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
