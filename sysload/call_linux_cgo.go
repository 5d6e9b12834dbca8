//go:build linux && cgo

package sysload

/*
#include <stdint.h>

typedef uintptr_t u;

static uintptr_t tether_call(uintptr_t fn, const uintptr_t *a, int n) {
	switch (n) {
	case 0: return ((u (*)(void))fn)();
	case 1: return ((u (*)(u))fn)(a[0]);
	case 2: return ((u (*)(u, u))fn)(a[0], a[1]);
	case 3: return ((u (*)(u, u, u))fn)(a[0], a[1], a[2]);
	case 4: return ((u (*)(u, u, u, u))fn)(a[0], a[1], a[2], a[3]);
	case 5: return ((u (*)(u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4]);
	case 6: return ((u (*)(u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5]);
	case 7: return ((u (*)(u, u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5], a[6]);
	case 8: return ((u (*)(u, u, u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7]);
	case 9: return ((u (*)(u, u, u, u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8]);
	case 10: return ((u (*)(u, u, u, u, u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8], a[9]);
	case 11: return ((u (*)(u, u, u, u, u, u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8], a[9], a[10]);
	case 12: return ((u (*)(u, u, u, u, u, u, u, u, u, u, u, u))fn)(a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8], a[9], a[10], a[11]);
	}
	return 0;
}
*/
import "C"

import "fmt"

// MaxCallArgs is the widest signature Call can invoke.
const MaxCallArgs = 12

// Call invokes addr as a C function taking len(args) word-sized arguments.
func Call(addr uintptr, args ...uintptr) uintptr {
	if len(args) > MaxCallArgs {
		panic(fmt.Sprintf("sysload: %d arguments exceeds the %d supported", len(args), MaxCallArgs))
	}
	var buf [MaxCallArgs]C.uintptr_t
	for i, arg := range args {
		buf[i] = C.uintptr_t(arg)
	}
	return uintptr(C.tether_call(C.uintptr_t(addr), &buf[0], C.int(len(args))))
}
