package tether_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildGenuineLib compiles testdata/c/genuine.c for the host into
// outDir/name, preferring zig cc and falling back to cc.
func buildGenuineLib(t *testing.T, outDir string, name string) string {
	t.Helper()

	outputPath := filepath.Join(outDir, name)
	sourcePath := filepath.Join("testdata", "c", "genuine.c")

	var cmd *exec.Cmd
	if _, err := exec.LookPath("zig"); err == nil {
		target, ok := zigTargetFor(runtime.GOOS, runtime.GOARCH)
		if !ok {
			t.Skipf("no zig target for %s/%s", runtime.GOOS, runtime.GOARCH)
		}
		cmd = exec.Command("zig", "cc", "-target", target, "-shared", "-fPIC", "-O2", "-g0", "-o", outputPath, sourcePath)
		cmd.Env = append(
			os.Environ(),
			"ZIG_GLOBAL_CACHE_DIR="+filepath.Join(os.TempDir(), "tether-zig-global-cache"),
			"ZIG_LOCAL_CACHE_DIR="+filepath.Join(os.TempDir(), "tether-zig-local-cache"),
		)
	} else {
		requireCommand(t, "cc")
		cmd = exec.Command("cc", "-shared", "-fPIC", "-O2", "-o", outputPath, sourcePath)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build genuine library %s: %v\n%s", outputPath, err, output)
	}
	return outputPath
}

// buildProxyDLL cross-compiles ./dll as a windows c-shared library.
func buildProxyDLL(t *testing.T, outDir string, goarch string) string {
	t.Helper()
	requireCommand(t, "zig")

	target, ok := zigTargetFor("windows", goarch)
	if !ok {
		t.Fatalf("unsupported proxy target windows/%s", goarch)
	}
	outputPath := filepath.Join(outDir, fmt.Sprintf("dxgi_windows-%s.dll", goarch))

	cmd := exec.Command("go", "build", "-buildmode=c-shared", "-trimpath", "-o", outputPath, "./dll")
	cmd.Env = overrideEnv(os.Environ(), map[string]string{
		"GOOS":        "windows",
		"GOARCH":      goarch,
		"CGO_ENABLED": "1",
		"GOCACHE":     filepath.Join(os.TempDir(), "tether-go-build-cache"),
		"CC":          "zig cc -target " + target,
		"CXX":         "zig c++ -target " + target,
	})
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build proxy dll windows/%s: %v\n%s", goarch, err, out)
	}

	cleanupGoSharedSidecars(outputPath, "dll")
	return outputPath
}

func zigTargetFor(goos string, goarch string) (string, bool) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "x86_64-linux-gnu", true
	case goos == "linux" && goarch == "arm64":
		return "aarch64-linux-gnu", true
	case goos == "windows" && goarch == "amd64":
		return "x86_64-windows-gnu", true
	default:
		return "", false
	}
}

func TestZigTargetForBuildTargets(t *testing.T) {
	// Fixtures are built for linux hosts and the proxy for windows/amd64.
	for _, tt := range []struct{ goos, goarch, want string }{
		{"linux", "amd64", "x86_64-linux-gnu"},
		{"linux", "arm64", "aarch64-linux-gnu"},
		{"windows", "amd64", "x86_64-windows-gnu"},
	} {
		got, ok := zigTargetFor(tt.goos, tt.goarch)
		if !ok || got != tt.want {
			t.Fatalf("zigTargetFor(%s, %s) = %q, %v; want %q", tt.goos, tt.goarch, got, ok, tt.want)
		}
	}
	if _, ok := zigTargetFor("darwin", "arm64"); ok {
		t.Fatalf("darwin has no fixture or proxy build")
	}
}

func cleanupGoSharedSidecars(outputPath string, ext string) {
	base := strings.TrimSuffix(outputPath, "."+ext)
	_ = os.Remove(base + ".h")
	_ = os.Remove(base + ".lib")
	_ = os.Remove(base + ".exp")
	_ = os.Remove(base + ".pdb")
}

func overrideEnv(base []string, overrides map[string]string) []string {
	block := make(map[string]struct{}, len(overrides))
	for key := range overrides {
		block[key] = struct{}{}
	}

	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			continue
		}
		if _, drop := block[kv[:eq]]; drop {
			continue
		}
		out = append(out, kv)
	}

	for key, value := range overrides {
		out = append(out, key+"="+value)
	}
	return out
}

func runCmd(t *testing.T, name string, args ...string) string {
	t.Helper()

	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %s failed: %v\n%s", name, strings.Join(args, " "), err, output)
	}
	return string(output)
}

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found in PATH", name)
	}
}
