package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func doRequest(method, url, token string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}

func printJSON(out io.Writer, data []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		_, werr := out.Write(data)
		return werr
	}
	_, err := fmt.Fprintln(out, pretty.String())
	return err
}

func runStart(apiURL, token, symptoms string, out io.Writer) error {
	data, err := doRequest("POST", apiURL+"/api/sessions", token, map[string]string{"symptoms": symptoms})
	if err != nil {
		return err
	}
	return printJSON(out, data)
}

func runStatus(apiURL, token, sessionID string, out io.Writer) error {
	data, err := doRequest("GET", apiURL+"/api/sessions/"+sessionID, token, nil)
	if err != nil {
		return err
	}
	return printJSON(out, data)
}

func runAnswer(apiURL, token, sessionID, questionID string, value bool, out io.Writer) error {
	data, err := doRequest("POST", apiURL+"/api/sessions/"+sessionID+"/answers", token,
		map[string]interface{}{"questionId": questionID, "value": value})
	if err != nil {
		return err
	}
	return printJSON(out, data)
}

func runRecommendations(apiURL, token string, limit, offset int, out io.Writer) error {
	url := fmt.Sprintf("%s/api/recommendations?limit=%d&offset=%d", apiURL, limit, offset)
	data, err := doRequest("GET", url, token, nil)
	if err != nil {
		return err
	}
	return printJSON(out, data)
}
