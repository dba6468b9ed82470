package model

import "errors"

var (
	// ErrEmptyPath indicates no model artifact location was given.
	ErrEmptyPath = errors.New("model path must not be empty")
	// ErrStorageDisabled indicates a blob path was given without a configured store.
	ErrStorageDisabled = errors.New("blob model path requires storage configuration")
	// ErrInvalidArtifact indicates the artifact decoded but is structurally unusable.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrUnsupportedKind indicates the artifact declares an unknown predictor kind.
	ErrUnsupportedKind = errors.New("unsupported model kind")
	// ErrColumnMismatch indicates a frame's columns differ from the predictor's features.
	ErrColumnMismatch = errors.New("frame columns do not match model features")
)
