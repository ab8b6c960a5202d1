// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "fmt"

// ErrInvalid reports a precondition violation caught at a public API
// boundary such as Init, not inside Allocate/Free/Reallocate
// themselves: those treat caller misuse as undefined behavior, not a
// checked error.
type ErrInvalid struct {
	Op  string
	Arg interface{}
}

func (e *ErrInvalid) Error() string { return fmt.Sprintf("%s: invalid argument %v", e.Op, e.Arg) }
