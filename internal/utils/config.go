package utils

import (
	"fmt"
	"os"
	"path"
	"reflect"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

func createDefaultConfigFile[T any](configDirPath, configFileName string, dflt *T) error {
	configFilePath := path.Join(configDirPath, configFileName)
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintOK(fmt.Sprintf("attempting to create file: '%v'\n", configFilePath))
		}
		err := CreateFile(configFilePath, dflt)
		if err != nil {
			return fmt.Errorf("failed to write config: '%v', error: %w", configFileName, err)
		}
	}
	return nil
}

// LoadConfigFromFile loads a json config file from the config dir, creating
// it with the default values on first use. Zero valued fields are backfilled
// from the default, which covers config files written by older versions.
func LoadConfigFromFile[T any](configDirPath, configFileName string, dflt *T) (T, error) {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("attempting to load file: %v/%v\n", configDirPath, configFileName))
	}

	var nilVal T
	if err := CreateConfigDir(configDirPath); err != nil {
		return nilVal, err
	}
	if err := createDefaultConfigFile(configDirPath, configFileName, dflt); err != nil {
		return nilVal, err
	}

	configPath := path.Join(configDirPath, configFileName)
	var conf T
	err := ReadAndUnmarshal(configPath, &conf)
	if err != nil {
		return conf, fmt.Errorf("failed to unmarshal config '%v', error: %v", configFileName, err)
	}

	// Append any new fields from default config, in case of config extension
	hasChanged := setNonZeroValueFields(&conf, dflt)
	if hasChanged {
		err = CreateFile(configPath, &conf)
		if err != nil {
			return conf, fmt.Errorf("failed to write config '%v' post zero-field appendage, error: %v", configFileName, err)
		}
		ancli.PrintOK(fmt.Sprintf("appended new fields and updated config file: %v\n", configPath))
	}

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("found config: %+v\n", conf))
	}
	return conf, nil
}

// setNonZeroValueFields on a using b as template
func setNonZeroValueFields[T any](a, b *T) bool {
	hasChanged := false
	t := reflect.TypeOf(*a)
	for i := range t.NumField() {
		f := t.Field(i)
		aVal := reflect.ValueOf(a).Elem().FieldByName(f.Name)
		bVal := reflect.ValueOf(b).Elem().FieldByName(f.Name)
		if f.IsExported() && aVal.IsZero() && !bVal.IsZero() {
			hasChanged = true
			aVal.Set(bVal)
		}
	}
	return hasChanged
}

// ReturnNonDefault returns whichever of a or b that isn't the default
// value, erroring if both are set since the flags are mutually exclusive.
func ReturnNonDefault[T comparable](a, b, defaultVal T) (T, error) {
	if a != defaultVal && b != defaultVal {
		return defaultVal, fmt.Errorf("values are mutually exclusive")
	}
	if a != defaultVal {
		return a, nil
	}
	if b != defaultVal {
		return b, nil
	}
	return defaultVal, nil
}
