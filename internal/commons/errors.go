package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidChecksum = errors.New("Invalid card number checksum")
var ErrInvalidCredentials = errors.New("Wrong card number or PIN")
var ErrDuplicateAccountID = errors.New("Account id already exists")
