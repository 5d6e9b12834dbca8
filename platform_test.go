package tether_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"unicode/utf16"
)

const fakeSystemDir = `C:\Windows\System32`

// fakePlatform is an in-memory loader: libraries maps an absolute path to
// its exports.
type fakePlatform struct {
	dir     string
	dirErr  error
	maxPath int

	// byteLen measures paths in bytes, as the Linux loader does, instead
	// of UTF-16 units.
	byteLen   bool
	libraries map[string]map[string]uintptr

	mu      sync.Mutex
	handles map[uintptr]string
	loads   atomic.Int64
	lookups atomic.Int64
	// loadHook runs inside LoadLibrary before the handle is returned.
	loadHook func(path string)
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		dir:     fakeSystemDir,
		maxPath: 260,
		libraries: map[string]map[string]uintptr{
			fakeSystemDir + `\dxgi.dll`: {
				"CreateDXGIFactory":  0x1000,
				"CreateDXGIFactory1": 0x1010,
				"CreateDXGIFactory2": 0x1020,
			},
			fakeSystemDir + `\d3d11.dll`: {
				"D3D11CreateDevice":             0x2000,
				"D3D11CreateDeviceAndSwapChain": 0x2010,
			},
		},
		handles: make(map[uintptr]string),
	}
}

func (p *fakePlatform) SystemDirectory() (string, error) {
	return p.dir, p.dirErr
}

func (p *fakePlatform) LoadLibrary(path string) (uintptr, error) {
	p.loads.Add(1)
	if p.loadHook != nil {
		p.loadHook(path)
	}
	if _, ok := p.libraries[path]; !ok {
		return 0, errors.New("The specified module could not be found.")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for h, existing := range p.handles {
		if existing == path {
			return h, nil
		}
	}
	h := uintptr(0x7ff0000 + len(p.handles)*0x10000)
	p.handles[h] = path
	return h, nil
}

func (p *fakePlatform) ProcAddress(module uintptr, name string) (uintptr, error) {
	p.lookups.Add(1)
	p.mu.Lock()
	path, ok := p.handles[module]
	p.mu.Unlock()
	if !ok {
		return 0, errors.New("invalid module handle")
	}
	addr, ok := p.libraries[path][name]
	if !ok {
		return 0, errors.New("The specified procedure could not be found.")
	}
	return addr, nil
}

func (p *fakePlatform) MaxPath() int { return p.maxPath }

func (p *fakePlatform) PathLen(s string) int {
	if p.byteLen {
		return len(s)
	}
	n := 0
	for _, c := range s {
		n += utf16.RuneLen(c)
	}
	return n
}

func (p *fakePlatform) Separator() string { return `\` }
