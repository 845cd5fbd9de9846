// Package credentials resolves the service account used by the firestore backend.
//
// Values come from configuration (CREDENTIALS_PROJECT_ID, CREDENTIALS_CLIENT_EMAIL,
// CREDENTIALS_PRIVATE_KEY) and, for any field left empty, from a downloaded key
// file (CREDENTIALS_KEY_FILE). Escaped "\n" sequences in the private key are
// turned into newlines. An account missing any field fails with ErrIncomplete,
// which the engine reports as an unavailable store before making remote calls.
package credentials
