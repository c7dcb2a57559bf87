package main

import (
	"crypto/dsa"
	"crypto/rand"
)

// deriveKeypair draws a private key uniformly from (0, q) and computes the
// matching public value on the given domain parameters. The parameter
// integers are shared with the returned key, not copied.
func deriveKeypair(params *dsa.Parameters) (*dsa.PrivateKey, error) {
	key := new(dsa.PrivateKey)
	key.Parameters = *params
	if err := dsa.GenerateKey(key, rand.Reader); err != nil {
		return nil, err
	}
	return key, nil
}
