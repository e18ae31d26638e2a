package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const (
	appName      = "galleryd"
	defaultLabel = "Default"
)

// ConfigRoot is GALLERYD_CONFIG_DIR when set, else the platform config dir.
func ConfigRoot() string {
	if dir := os.Getenv(envPrefix + "CONFIG_DIR"); dir != "" {
		return dir
	}

	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func profilePath(label string) string {
	return filepath.Join(ConfigsDir(), label+".yaml")
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil {
		return "", err
	}
	if label == "" {
		return "", ErrNoConfig
	}

	return profilePath(label), nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		label, ok := strings.CutSuffix(e.Name(), ".yaml")
		if e.IsDir() || !ok {
			continue
		}

		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), e.Name()),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	if _, err := os.Stat(profilePath(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

// AddConfig copies the YAML profile at srcPath into the store as label. The
// copy must decode as a Config.
func AddConfig(label, srcPath string) error {
	if err := validLabel(label); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	dst := profilePath(label)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("config %q already exists", label)
	}

	if _, err := loadYAML(srcPath); err != nil {
		return fmt.Errorf("invalid config %s: %w", srcPath, err)
	}

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, raw, 0644)
}

// CreateEmptyConfig writes a profile holding the defaults. It does not
// activate it.
func CreateEmptyConfig(label string) (string, error) {
	if err := validLabel(label); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

// RenameConfig moves a profile and keeps it active if it was.
func RenameConfig(oldLabel, newLabel string) error {
	if err := validLabel(newLabel); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	oldPath := profilePath(oldLabel)
	newPath := profilePath(newLabel)

	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("config %q does not exist", oldLabel)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == oldLabel {
		return os.WriteFile(CurrentLabelFile(), []byte(newLabel), 0644)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active one falls back to
// Default, which itself cannot be removed. The returned bool reports that
// fallback.
func RemoveConfig(label string) (bool, error) {
	if strings.TrimSpace(label) == "" {
		return false, errors.New("label cannot be empty")
	}
	if label == defaultLabel {
		return false, fmt.Errorf("cannot remove the %s config", defaultLabel)
	}
	if err := ensureDirs(); err != nil {
		return false, err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("config %q does not exist", label)
	}

	switched := false
	if active, _ := CurrentLabel(); active == label {
		if err := SwitchConfig(defaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to %s: %w", defaultLabel, err)
		}
		switched = true
	}

	return switched, os.Remove(path)
}

// ResetActiveConfig overwrites the active profile with the defaults.
func ResetActiveConfig() (string, error) {
	path, err := ActiveConfigPath()
	if err != nil {
		return "", err
	}

	return path, SaveYAML(DefaultConfig(), path)
}

func validLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("invalid label %q", label)
	}

	return nil
}

// InitDefaultConfig writes the Default profile and activates it. When the
// profile already exists it is only activated and os.ErrExist is returned.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profilePath(defaultLabel)
	if _, err := os.Stat(path); err == nil {
		_ = os.WriteFile(CurrentLabelFile(), []byte(defaultLabel), 0644)
		return path, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	_ = os.WriteFile(CurrentLabelFile(), []byte(defaultLabel), 0644)
	return path, nil
}
