// Package collector captures focus/idle samples from GNOME Shell via its
// session bus Eval method. Linux/GNOME only; everything downstream treats the
// collector as an opaque sample source.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// FocusSample is one raw observation from the shell.
type FocusSample struct {
	IdleMS  *int64
	Title   *string
	WMClass *string
	PID     *int64
	Raw     map[string]any
}

const evalJS = `
(() => {
  try {
    const w = global.display.focus_window;
    const idle = global.backend?.get_core_idle_monitor?.().get_idletime?.();
    if (!w) {
      return JSON.stringify({ idle_ms: idle ?? null, title: null, wm_class: null, pid: null });
    }
    return JSON.stringify({
      idle_ms: idle ?? null,
      title: w.get_title?.() ?? null,
      wm_class: w.get_wm_class?.() ?? null,
      pid: w.get_pid?.() ?? null,
    });
  } catch (e) {
    return JSON.stringify({ error: String(e) });
  }
})()`

// gdbus prints Eval results as a tuple: (true, '...') or (false, '').
var gdbusTupleRe = regexp.MustCompile(`(?is)^\((true|false),\s*(.*)\)\s*$`)

// ShellEval runs a JS snippet through org.gnome.Shell.Eval and returns the
// result string.
func ShellEval(ctx context.Context, js string) (string, error) {
	cmd := exec.CommandContext(ctx, "gdbus", "call", "--session",
		"--dest", "org.gnome.Shell",
		"--object-path", "/org/gnome/Shell",
		"--method", "org.gnome.Shell.Eval",
		js)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("gnome-shell eval: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("gnome-shell eval: %w", err)
	}

	m := gdbusTupleRe.FindStringSubmatch(strings.TrimSpace(string(out)))
	if m == nil {
		return "", fmt.Errorf("gnome-shell eval: unrecognised gdbus output %q", string(out))
	}
	success := strings.EqualFold(m[1], "true")
	payload := strings.TrimSpace(m[2])

	inner, err := decodeGVariantString(payload)
	if err != nil {
		return "", fmt.Errorf("gnome-shell eval: %w", err)
	}
	if !success {
		return "", fmt.Errorf("gnome-shell eval: %s", inner)
	}
	return inner, nil
}

// decodeGVariantString unwraps the single- or double-quoted string literal
// gdbus prints for a string result.
func decodeGVariantString(payload string) (string, error) {
	switch {
	case strings.HasPrefix(payload, "'") && strings.HasSuffix(payload, "'") && len(payload) >= 2:
		inner := payload[1 : len(payload)-1]
		// gdbus escaping is C-like; strconv.Unquote handles the usual cases.
		unq, err := strconv.Unquote(`"` + strings.ReplaceAll(inner, `"`, `\"`) + `"`)
		if err != nil {
			return "", fmt.Errorf("failed to parse eval payload %q", payload)
		}
		return unq, nil
	case strings.HasPrefix(payload, `"`) && strings.HasSuffix(payload, `"`):
		var s string
		if err := json.Unmarshal([]byte(payload), &s); err != nil {
			return "", fmt.Errorf("failed to parse eval payload %q", payload)
		}
		return s, nil
	default:
		return payload, nil
	}
}

// GetFocusSample captures one focus/idle observation.
func GetFocusSample(ctx context.Context) (FocusSample, error) {
	rawStr, err := ShellEval(ctx, evalJS)
	if err != nil {
		return FocusSample{}, err
	}
	return ParseFocusSample(rawStr)
}

// ParseFocusSample decodes the JSON payload the Eval snippet produces.
func ParseFocusSample(rawStr string) (FocusSample, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(rawStr), &raw); err != nil {
		return FocusSample{}, fmt.Errorf("gnome-shell eval did not return JSON: %q", rawStr)
	}
	if e, ok := raw["error"]; ok {
		return FocusSample{}, fmt.Errorf("gnome-shell eval: %v", e)
	}

	out := FocusSample{Raw: raw}
	if v, ok := raw["idle_ms"].(float64); ok {
		n := int64(v)
		out.IdleMS = &n
	}
	if v, ok := raw["title"].(string); ok {
		out.Title = &v
	}
	if v, ok := raw["wm_class"].(string); ok {
		out.WMClass = &v
	}
	if v, ok := raw["pid"].(float64); ok {
		n := int64(v)
		out.PID = &n
	}
	return out, nil
}
