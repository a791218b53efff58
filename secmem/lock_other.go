// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !unix

package secmem

import "errors"

// errLockUnsupported is returned on platforms without a page-locking
// primitive wired up (e.g. Windows, where VirtualLock would be the
// equivalent); treated as advisory by the Direct policy.
var errLockUnsupported = errors.New("secmem: page locking unsupported on this platform")

func lockPages(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return errLockUnsupported
}

func unlockPages(b []byte) error {
	return nil
}
