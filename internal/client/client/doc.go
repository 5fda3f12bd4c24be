// Package client is the typed wrapper around the remote catalog service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) with the four
//     catalog operations (List, Upload, Remove, MarkMigrated) plus the
//     peripheral Get, ListQuotations and Ping calls.
//  2. A concrete HTTP implementation (see HTTPClient) that speaks the
//     JSON/multipart wire format of the catalog service.
//  3. UploadFields, the explicit mapping of an upload draft to the set of
//     multipart fields that are actually sent.
//
// # Error Handling
//
// Every failure is returned as *APIError whose Kind is one of the sentinels
// ErrValidation, ErrTransport or ErrNotFound, so callers can match with
// errors.Is. Message returns the server-supplied explanation when present
// and a generic description of the failure class otherwise.
//
// No call is retried. All operations accept context.Context and honor
// cancellation.
package client
