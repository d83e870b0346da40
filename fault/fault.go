// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ArithmeticError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PaymentError GenericError
type PermissionError GenericError
type ProcessError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyEnumerated      = ExistsError("identifier already enumerated")
	ErrAlreadyFulfilled       = StateError("promise already fulfilled")
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAlreadyOwned           = ExistsError("identifier already has an owner")
	ErrAmountOverflow         = ArithmeticError("amount overflow")
	ErrBlockAlreadyApplied    = ExistsError("block already applied")
	ErrBlockNotInSequence     = InvalidError("block number is not the next in sequence")
	ErrBucketHasPromise       = StateError("bucket already holds a promise")
	ErrBucketNotFound         = NotFoundError("bucket not found")
	ErrCertificateFileExists  = ExistsError("certificate file already exists")
	ErrConfigurationNotTable  = InvalidError("configuration must return a table")
	ErrCountOverflow          = ArithmeticError("count overflow")
	ErrCountUnderflow         = ArithmeticError("count underflow")
	ErrDatabaseIsNewer        = InvalidError("database version is newer than supported")
	ErrIdentifierCollision    = ExistsError("identifier collision")
	ErrInsufficientFunds      = PaymentError("insufficient funds")
	ErrInvalidAccount         = InvalidError("invalid account")
	ErrInvalidAddress         = InvalidError("invalid IP address and port")
	ErrInvalidAmount          = InvalidError("invalid amount")
	ErrInvalidChecksum        = InvalidError("invalid checksum")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidCursor          = InvalidError("invalid cursor")
	ErrInvalidDigest          = InvalidError("invalid digest")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidPoolPrefix      = InvalidError("invalid pool prefix")
	ErrInvalidPrivateKeyFile  = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile   = InvalidError("invalid public key file")
	ErrInvalidRecord          = InvalidError("invalid record")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrKeyFileExists          = ExistsError("key file already exists")
	ErrLockNotExpired         = StateError("lock has not expired")
	ErrLockNotFound           = NotFoundError("lock not found")
	ErrMissingArguments       = InvalidError("missing call arguments")
	ErrNoPromise              = StateError("bucket does not hold a promise")
	ErrNotBucketOwner         = PermissionError("caller is not the bucket owner")
	ErrNotForSale             = StateError("bucket is not for sale")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrNotPromiseOwner        = PermissionError("caller is not the promise owner")
	ErrOwnerNotFound          = NotFoundError("owner not found")
	ErrOverfilled             = StateError("promise is filled beyond its value")
	ErrPriceTooHigh           = PaymentError("price exceeds maximum")
	ErrPromiseAlreadyAccepted = StateError("promise already accepted")
	ErrPromiseNotFound        = NotFoundError("promise not found")
	ErrSelfDealing            = PermissionError("caller may not act on own bucket or promise")
	ErrTransactionInUse       = ProcessError("transaction already in use")
	ErrTransactionNotInUse    = ProcessError("transaction not in use")
	ErrUnknownCall            = InvalidError("unknown call")
	ErrWrongOwner             = PermissionError("account is not the recorded owner")
	ErrZeroPeriod             = InvalidError("period must be greater than zero")
	ErrZeroValue              = StateError("promise value is zero")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ArithmeticError) Error() string { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PaymentError) Error() string    { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e StateError) Error() string      { return string(e) }

// determine the class of an error
func IsErrArithmetic(e error) bool { _, ok := e.(ArithmeticError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPayment(e error) bool    { _, ok := e.(PaymentError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrState(e error) bool      { _, ok := e.(StateError); return ok }

// IsErrConflict - state conflicts are reported as either class
func IsErrConflict(e error) bool { return IsErrExists(e) || IsErrState(e) }
