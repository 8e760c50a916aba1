package manifest

import (
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

const environmentHeader = "environment:"

const runtimeKey = "flutter:"

var versionTriple = regexp.MustCompile(`\d+\.\d+\.\d+`)

// RuntimePin extracts the pinned Flutter version from a pubspec's
// environment block, e.g.
//
//	environment:
//	  sdk: ">=3.3.0 <4.0.0"
//	  flutter: "3.19.6"
//
// The scan is line-based on purpose: quoting styles and range operators
// vary across repositories, the version triple inside does not. Returns
// an empty string when no pin is present.
func RuntimePin(text string) string {
	inEnvironment := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		if trimmed == environmentHeader {
			inEnvironment = true
			continue
		}
		if !inEnvironment || trimmed == "" {
			continue
		}
		// The next top-level key closes the environment block.
		if !strings.HasPrefix(trimmed, " ") && !strings.HasPrefix(trimmed, "\t") {
			inEnvironment = false
			continue
		}
		inner := strings.TrimLeft(trimmed, " \t")
		if !strings.HasPrefix(inner, runtimeKey) {
			continue
		}
		if pin := versionTriple.FindString(strings.TrimPrefix(inner, runtimeKey)); pin != "" {
			return pin
		}
	}
	return ""
}

type fvmConfig struct {
	Flutter           string `yaml:"flutter"`
	FlutterSdkVersion string `yaml:"flutterSdkVersion"`
}

// FVMPin extracts the pinned Flutter version from an FVM config file.
// Current .fvmrc files are a small JSON object with a flutter key,
// legacy fvm_config.json files use flutterSdkVersion. Malformed files
// fall back to a plain scan for the first version triple.
func FVMPin(text string) string {
	var cfg fvmConfig
	if err := yaml.Unmarshal([]byte(text), &cfg); err == nil {
		for _, candidate := range []string{cfg.Flutter, cfg.FlutterSdkVersion} {
			if pin := versionTriple.FindString(candidate); pin != "" {
				return pin
			}
		}
	}
	return versionTriple.FindString(text)
}
