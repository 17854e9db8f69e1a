package translations

import (
	"encoding/json"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// TranslationHelperFunc resolves a user-facing string by key, falling
// back to the supplied default when no override exists.
type TranslationHelperFunc func(key string, defaultValue string) string

func NullTranslationHelper(_ string, defaultValue string) string {
	return defaultValue
}

// TranslationHelper returns a helper that resolves overrides from the
// LINEAR_MCP_ environment and an optional linear-mcp-server-config.json
// in the working directory, plus a dump function that writes every key
// seen so far back to that file as a starting point for customization.
func TranslationHelper() (TranslationHelperFunc, func()) {
	var translationKeyMap = map[string]string{}
	v := viper.New()

	v.SetEnvPrefix("LINEAR_MCP_")
	v.AutomaticEnv()

	v.SetConfigName("linear-mcp-server-config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// ignore errors as we load the config only if it exists
		log.Debugf("no translation config: %v", err)
	}

	return func(key string, defaultValue string) string {
			key = strings.ToUpper(key)
			if value, exists := translationKeyMap[key]; exists {
				return value
			}

			value := v.GetString(key)
			if value == "" {
				v.SetDefault(key, defaultValue)
				translationKeyMap[key] = defaultValue
				return defaultValue
			}

			translationKeyMap[key] = value
			return value
		}, func() {
			DumpTranslationKeyMap(translationKeyMap)
		}
}

// DumpTranslationKeyMap writes the key map to a JSON file in the
// current working directory.
func DumpTranslationKeyMap(translationKeyMap map[string]string) {
	file, err := os.Create("linear-mcp-server-config.json")
	if err != nil {
		log.Fatalf("Error creating translations file: %v", err)
	}
	defer func() { _ = file.Close() }()

	doc, err := json.MarshalIndent(translationKeyMap, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling translations: %v", err)
	}

	if _, err := file.Write(doc); err != nil {
		log.Fatalf("Error writing translations file: %v", err)
	}
}
