// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

// serializeExtraVars renders the extra variables as a YAML document,
// injecting the two platform keys every launch depends on. A nil map yields
// an empty document with nothing injected.
func serializeExtraVars(extraVars map[string]interface{}, validateCerts bool, hostname string) (string, error) {
	if extraVars == nil {
		return "", nil
	}

	merged := make(map[string]interface{}, len(extraVars)+2)
	for k, v := range extraVars {
		merged[k] = v
	}
	merged["aap_validate_certs"] = validateCerts
	merged["aap_hostname"] = hostname

	out, err := yaml.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("failed to serialize extra variables: %w", err)
	}

	return string(out), nil
}

// RewriteUsecaseURLs returns a copy of extraVars with every usecases[].url
// entry rewritten to embed username:password basic auth. The input is never
// mutated, callers own it.
func RewriteUsecaseURLs(extraVars map[string]interface{}, username, password string) map[string]interface{} {
	if extraVars == nil {
		return nil
	}

	out := make(map[string]interface{}, len(extraVars))
	for k, v := range extraVars {
		out[k] = v
	}

	usecases, ok := extraVars["usecases"].([]interface{})
	if !ok {
		return out
	}

	rewritten := make([]interface{}, 0, len(usecases))
	for _, item := range usecases {
		usecase, ok := item.(map[string]interface{})
		if !ok {
			rewritten = append(rewritten, item)
			continue
		}

		copied := make(map[string]interface{}, len(usecase))
		for k, v := range usecase {
			copied[k] = v
		}

		if raw, ok := copied["url"].(string); ok {
			if withAuth, err := embedBasicAuth(raw, username, password); err == nil {
				copied["url"] = withAuth
			}
		}

		rewritten = append(rewritten, copied)
	}

	out["usecases"] = rewritten

	return out
}

func embedBasicAuth(raw, username, password string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	parsed.User = url.UserPassword(username, password)

	return parsed.String(), nil
}
