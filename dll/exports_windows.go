//go:build windows && cgo && (amd64 || arm64)

package main

/*
#include <stdint.h>
*/
import "C"

import "unsafe"

// Pointer parameters arrive from C and reference C memory, so converting
// them to uintptr before the forwarded call is safe.

//export CreateDXGIFactory
func CreateDXGIFactory(riid, factory unsafe.Pointer) C.int32_t {
	return C.int32_t(proxy().CreateDXGIFactory(uintptr(riid), uintptr(factory)))
}

//export CreateDXGIFactory1
func CreateDXGIFactory1(riid, factory unsafe.Pointer) C.int32_t {
	return C.int32_t(proxy().CreateDXGIFactory1(uintptr(riid), uintptr(factory)))
}

//export CreateDXGIFactory2
func CreateDXGIFactory2(flags C.uint32_t, riid, factory unsafe.Pointer) C.int32_t {
	return C.int32_t(proxy().CreateDXGIFactory2(uint32(flags), uintptr(riid), uintptr(factory)))
}

//export DirectInput8Create
func DirectInput8Create(hinst C.uintptr_t, version C.uint32_t, riid, out, outer unsafe.Pointer) C.int32_t {
	return C.int32_t(proxy().DirectInput8Create(uintptr(hinst), uint32(version), uintptr(riid), uintptr(out), uintptr(outer)))
}

//export D3D11CreateDevice
func D3D11CreateDevice(
	adapter unsafe.Pointer,
	driverType C.uint32_t,
	software C.uintptr_t,
	flags C.uint32_t,
	featureLevels unsafe.Pointer,
	featureLevelCount C.uint32_t,
	sdkVersion C.uint32_t,
	device unsafe.Pointer,
	featureLevel unsafe.Pointer,
	immediateContext unsafe.Pointer,
) C.int32_t {
	return C.int32_t(proxy().D3D11CreateDevice(
		uintptr(adapter),
		uint32(driverType),
		uintptr(software),
		uint32(flags),
		uintptr(featureLevels),
		uint32(featureLevelCount),
		uint32(sdkVersion),
		uintptr(device),
		uintptr(featureLevel),
		uintptr(immediateContext),
	))
}

//export D3D11CreateDeviceAndSwapChain
func D3D11CreateDeviceAndSwapChain(
	adapter unsafe.Pointer,
	driverType C.uint32_t,
	software C.uintptr_t,
	flags C.uint32_t,
	featureLevels unsafe.Pointer,
	featureLevelCount C.uint32_t,
	sdkVersion C.uint32_t,
	swapChainDesc unsafe.Pointer,
	swapChain unsafe.Pointer,
	device unsafe.Pointer,
	featureLevel unsafe.Pointer,
	immediateContext unsafe.Pointer,
) C.int32_t {
	return C.int32_t(proxy().D3D11CreateDeviceAndSwapChain(
		uintptr(adapter),
		uint32(driverType),
		uintptr(software),
		uint32(flags),
		uintptr(featureLevels),
		uint32(featureLevelCount),
		uint32(sdkVersion),
		uintptr(swapChainDesc),
		uintptr(swapChain),
		uintptr(device),
		uintptr(featureLevel),
		uintptr(immediateContext),
	))
}
