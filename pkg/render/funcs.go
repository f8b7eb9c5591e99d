// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	urlPortRegexp = regexp.MustCompile(`.*:([0-9]+).*`)
	urlPathRegexp = regexp.MustCompile(`[^/]*/(.*)`)
	urlHostRegexp = regexp.MustCompile(`:.*`)
)

// FuncMap holds the functions available to templates. Functions taking the
// value to transform take it as their last argument so they can be used in
// pipelines: {{ .settings.urls | url_to_host }}.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"jsonify":                jsonify,
		"to_json":                toNiceJSON,
		"to_nice_json":           toNiceJSON,
		"to_yaml":                toYAML,
		"to_nice_yaml":           toNiceYAML,
		"to_toml":                toTOML,
		"regex_subst":            regexSubst,
		"url_to_host":            urlToHost,
		"url_to_port":            urlToPort,
		"url_to_path":            urlToPath,
		"resolve_hostname_to_ip": resolveHostnameToIP,
		"remove_duplicates":      removeDuplicates,
		"env_override":           envOverride,
		"to_basename":            filepath.Base,
		"is_dict_empty":          isDictEmpty,
		"indent":                 indent,
		"keys":                   keys,
	}
}

func jsonify(val interface{}) (string, error) {
	out, err := json.Marshal(val)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toNiceJSON(val interface{}) (string, error) {
	out, err := json.MarshalIndent(val, "", "    ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toYAML(val interface{}) (string, error) {
	return encodeYAML(val, 2)
}

func toNiceYAML(val interface{}) (string, error) {
	return encodeYAML(val, 4)
}

func encodeYAML(val interface{}, spaces int) (string, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(spaces)

	err := enc.Encode(val)
	if err != nil {
		return "", err
	}
	err = enc.Close()
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toTOML(val interface{}) (string, error) {
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(val)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// regexSubst replaces pattern matches in a string or in every string of a list.
func regexSubst(pattern, repl string, val interface{}) (interface{}, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return mapStrings(val, func(s string) string { return re.ReplaceAllString(s, repl) })
}

func urlToHost(val interface{}) (interface{}, error) {
	return mapStrings(val, func(s string) string { return urlHostRegexp.ReplaceAllString(s, "") })
}

// urlToPort takes the url last and an optional default port first.
func urlToPort(args ...string) (string, error) {
	var defaultPort, url string
	switch len(args) {
	case 1:
		url = args[0]
	case 2:
		defaultPort, url = args[0], args[1]
	default:
		return "", fmt.Errorf("url_to_port: expected 1 or 2 arguments, but got %d", len(args))
	}

	port := urlPortRegexp.ReplaceAllString(url, "$1")
	if port == url {
		return defaultPort, nil
	}
	return port, nil
}

func urlToPath(url string) string {
	path := urlPathRegexp.ReplaceAllString(url, "/$1")
	if path == url {
		return "/"
	}
	return path
}

func resolveHostnameToIP(hostname string) (string, error) {
	addrs, err := net.LookupHost(hostname)
	if err != nil {
		return "", fmt.Errorf("Could not resolve provided hostname '%s': %w", hostname, err)
	}
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			return addr, nil
		}
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("Could not resolve provided hostname '%s'", hostname)
	}
	return addrs[0], nil
}

// removeDuplicates keeps the first occurrence of every item.
func removeDuplicates(list []interface{}) []interface{} {
	result := []interface{}{}
	for _, item := range list {
		duplicate := false
		for _, seen := range result {
			if reflect.DeepEqual(seen, item) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, item)
		}
	}
	return result
}

// envOverride returns the value of the environment variable key when set,
// val otherwise.
func envOverride(key string, val interface{}) interface{} {
	if envVal, found := os.LookupEnv(key); found {
		return envVal
	}
	return val
}

func isDictEmpty(val interface{}) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Map {
		return false
	}
	return rv.Len() == 0
}

// keys returns the sorted keys of a mapping.
func keys(val interface{}) ([]string, error) {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("Expected a mapping, but was %T", val)
	}
	result := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		result = append(result, key.String())
	}
	sort.Strings(result)
	return result, nil
}

func indent(spaces int, s string) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func mapStrings(val interface{}, fn func(string) string) (interface{}, error) {
	switch typedVal := val.(type) {
	case string:
		return fn(typedVal), nil
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("Expected list item to be a string, but was %T", item)
			}
			result[i] = fn(str)
		}
		return result, nil
	case []string:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = fn(item)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("Expected a string or a list of strings, but was %T", val)
	}
}
