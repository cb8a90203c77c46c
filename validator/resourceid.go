package validator

import "strings"

const defaultNamespace = "minecraft"

// normalizeResourceId validates and normalizes a string as a Minecraft
// resource identifier, per spec §4.5 and the GLOSSARY's Resource
// identifier entry: "namespace:path" with each half matching
// [a-z0-9_.-]+, path may additionally contain '/'; a bare path is given
// the default namespace "minecraft".
func normalizeResourceId(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	namespace, path, found := strings.Cut(s, ":")
	if !found {
		namespace, path = defaultNamespace, s
	}
	if !isValidNamespace(namespace) || !isValidPath(path) {
		return "", false
	}
	return namespace + ":" + path, true
}

func isValidNamespace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isIdChar(r) {
			return false
		}
	}
	return true
}

func isValidPath(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isIdChar(r) && r != '/' {
			return false
		}
	}
	return true
}

func isIdChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' || r == '-'
}
