// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package ordo

import "errors"

// Status is the stable, numeric error-code type of spec §6. ORDO_SUCCESS
// is zero; every other code is nonzero and pairwise distinct.
type Status int

const (
	Success  Status = 0
	Fail     Status = iota // generic failure (OS, allocation)
	Leftover               // finalization without padding but non-aligned input
	KeyLen                 // key length not admissible
	Padding                // padding verification failed on decrypt
	Arg                    // malformed argument (wrong primitive type, wrong IV length, nil where required)
	Alloc                  // allocation failure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "ORDO_SUCCESS"
	case Fail:
		return "ORDO_FAIL"
	case Leftover:
		return "ORDO_LEFTOVER"
	case KeyLen:
		return "ORDO_KEY_LEN"
	case Padding:
		return "ORDO_PADDING"
	case Arg:
		return "ORDO_ARG"
	case Alloc:
		return "ORDO_ALLOC"
	default:
		return "ORDO_UNKNOWN"
	}
}

// The Err* sentinels are the error-typed counterparts of the Status
// values above, so callers may use either `status == ordo.Success` or
// `errors.Is(err, ordo.ErrPadding)`, per SPEC_FULL §2's ambient-stack
// convention of pairing numeric codes with wrapped sentinel errors.
var (
	ErrFail     = errors.New(Fail.String())
	ErrLeftover = errors.New(Leftover.String())
	ErrKeyLen   = errors.New(KeyLen.String())
	ErrPadding  = errors.New(Padding.String())
	ErrArg      = errors.New(Arg.String())
	ErrAlloc    = errors.New(Alloc.String())
)

// statusErrs maps each nonzero Status to its sentinel error, for
// Status.Err's lookup.
var statusErrs = map[Status]error{
	Fail:     ErrFail,
	Leftover: ErrLeftover,
	KeyLen:   ErrKeyLen,
	Padding:  ErrPadding,
	Arg:      ErrArg,
	Alloc:    ErrAlloc,
}

// Err returns s's sentinel error, or nil if s == Success.
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	if err, ok := statusErrs[s]; ok {
		return err
	}
	return ErrFail
}
