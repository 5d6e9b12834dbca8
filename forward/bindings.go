package forward

// Binding names a genuine export and the number of word-sized arguments
// its documented signature takes.
type Binding struct {
	Library string
	Export  string
	Arity   int
}

func (b Binding) String() string { return b.Library + "!" + b.Export }

var (
	CreateDXGIFactory  = Binding{Library: "dxgi.dll", Export: "CreateDXGIFactory", Arity: 2}
	CreateDXGIFactory1 = Binding{Library: "dxgi.dll", Export: "CreateDXGIFactory1", Arity: 2}
	CreateDXGIFactory2 = Binding{Library: "dxgi.dll", Export: "CreateDXGIFactory2", Arity: 3}

	DirectInput8Create = Binding{Library: "dinput8.dll", Export: "DirectInput8Create", Arity: 5}

	D3D11CreateDevice             = Binding{Library: "d3d11.dll", Export: "D3D11CreateDevice", Arity: 10}
	D3D11CreateDeviceAndSwapChain = Binding{Library: "d3d11.dll", Export: "D3D11CreateDeviceAndSwapChain", Arity: 12}
)

var bindings = []Binding{
	CreateDXGIFactory,
	CreateDXGIFactory1,
	CreateDXGIFactory2,
	DirectInput8Create,
	D3D11CreateDevice,
	D3D11CreateDeviceAndSwapChain,
}

// Bindings returns every compiled-in binding.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

// Lookup finds the compiled-in binding for an export name.
func Lookup(export string) (Binding, bool) {
	for _, b := range bindings {
		if b.Export == export {
			return b, true
		}
	}
	return Binding{}, false
}

// Pointer arguments are plain addresses. They must point at memory that
// cannot move, such as C-allocated memory or package variables, and never
// at a Go stack variable: the stack may be copied before the genuine
// export runs.

// HRESULT CreateDXGIFactory(REFIID riid, void **ppFactory)
func (f *Forwarder) CreateDXGIFactory(riid, factory uintptr) HRESULT {
	return f.Forward(CreateDXGIFactory, riid, factory)
}

// HRESULT CreateDXGIFactory1(REFIID riid, void **ppFactory)
func (f *Forwarder) CreateDXGIFactory1(riid, factory uintptr) HRESULT {
	return f.Forward(CreateDXGIFactory1, riid, factory)
}

// HRESULT CreateDXGIFactory2(UINT Flags, REFIID riid, void **ppFactory)
func (f *Forwarder) CreateDXGIFactory2(flags uint32, riid, factory uintptr) HRESULT {
	return f.Forward(CreateDXGIFactory2, uintptr(flags), riid, factory)
}

// HRESULT DirectInput8Create(HINSTANCE hinst, DWORD dwVersion, REFIID riidltf,
// LPVOID *ppvOut, LPUNKNOWN punkOuter)
func (f *Forwarder) DirectInput8Create(hinst uintptr, version uint32, riid, out, outer uintptr) HRESULT {
	return f.Forward(DirectInput8Create, hinst, uintptr(version), riid, out, outer)
}

// D3D11CreateDevice forwards the ten-argument device factory.
func (f *Forwarder) D3D11CreateDevice(
	adapter uintptr,
	driverType uint32,
	software uintptr,
	flags uint32,
	featureLevels uintptr,
	featureLevelCount uint32,
	sdkVersion uint32,
	device uintptr,
	featureLevel uintptr,
	immediateContext uintptr,
) HRESULT {
	return f.Forward(D3D11CreateDevice,
		adapter,
		uintptr(driverType),
		software,
		uintptr(flags),
		featureLevels,
		uintptr(featureLevelCount),
		uintptr(sdkVersion),
		device,
		featureLevel,
		immediateContext,
	)
}

func (f *Forwarder) D3D11CreateDeviceAndSwapChain(
	adapter uintptr,
	driverType uint32,
	software uintptr,
	flags uint32,
	featureLevels uintptr,
	featureLevelCount uint32,
	sdkVersion uint32,
	swapChainDesc uintptr,
	swapChain uintptr,
	device uintptr,
	featureLevel uintptr,
	immediateContext uintptr,
) HRESULT {
	return f.Forward(D3D11CreateDeviceAndSwapChain,
		adapter,
		uintptr(driverType),
		software,
		uintptr(flags),
		featureLevels,
		uintptr(featureLevelCount),
		uintptr(sdkVersion),
		swapChainDesc,
		swapChain,
		device,
		featureLevel,
		immediateContext,
	)
}
