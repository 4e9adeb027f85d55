package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// PostJSON sends a POST request with a JSON body and the given headers.
// It returns the response status code and raw body; err is non-nil only
// for transport-level failures.
func PostJSON(url string, payload interface{}, headers map[string]string) (int, []byte, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}

// GetJSON sends a GET request with the given headers.
// It returns the response status code and raw body.
func GetJSON(url string, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}

// DecodeBody unmarshals a JSON response body into a generic map.
// Non-JSON bodies decode to an empty map rather than an error so callers
// can still inspect the status code.
func DecodeBody(body []byte) map[string]interface{} {
	result := map[string]interface{}{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return map[string]interface{}{}
		}
	}
	return result
}
