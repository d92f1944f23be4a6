package utils

import (
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
)

// GenerateScanLabel creates a random, memorable label for a scan, like "wispy-dust"
func GenerateScanLabel() string {
	seed := time.Now().UTC().UnixNano()
	name := namegenerator.NewNameGenerator(seed).Generate()

	return strings.ReplaceAll(name, "_", "-")
}

// SanitizeLabel turns user input such as a directory name into a scan label
func SanitizeLabel(label string) string {
	name := strings.ToLower(strings.TrimSpace(label))

	replacer := strings.NewReplacer(
		" ", "-",
		"_", "-",
		".", "-",
		",", "-",
		";", "-",
		":", "-",
		"/", "-",
		"\\", "-",
	)
	name = replacer.Replace(name)

	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	return strings.Trim(name, "-")
}
