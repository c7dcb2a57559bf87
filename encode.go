package main

import (
	"crypto/dsa"
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	pemTypeParameters = "DSA PARAMETERS"
	pemTypePrivateKey = "DSA PRIVATE KEY"
)

// dsaParameters is the Dss-Parms structure from RFC 3279:
//
//	Dss-Parms ::= SEQUENCE {
//	    p  INTEGER,
//	    q  INTEGER,
//	    g  INTEGER
//	}
type dsaParameters struct {
	P, Q, G *big.Int
}

// dsaPrivateKey is the OpenSSL traditional private key structure, readable
// by openssl dsa and by the ssh key loaders:
//
//	DSAPrivateKey ::= SEQUENCE {
//	    version  INTEGER,
//	    p        INTEGER,
//	    q        INTEGER,
//	    g        INTEGER,
//	    pub      INTEGER,
//	    priv     INTEGER
//	}
type dsaPrivateKey struct {
	Version int
	P, Q, G *big.Int
	Pub     *big.Int
	Priv    *big.Int
}

func marshalParameters(params *dsa.Parameters) ([]byte, error) {
	return asn1.Marshal(dsaParameters{P: params.P, Q: params.Q, G: params.G})
}

// unmarshalParameters parses a Dss-Parms structure. Trailing bytes after
// the structure are tolerated.
func unmarshalParameters(der []byte) (*dsa.Parameters, error) {
	var raw dsaParameters
	if _, err := asn1.Unmarshal(der, &raw); err != nil {
		return nil, fmt.Errorf("malformed DSA parameters: %w", err)
	}
	return &dsa.Parameters{P: raw.P, Q: raw.Q, G: raw.G}, nil
}

// decodeParameters reads parameters from raw input in the given format. PEM
// input may hold unrelated blocks ahead of the parameters; they are skipped.
func decodeParameters(data []byte, format Format) (*dsa.Parameters, error) {
	if format == FormatDER {
		return unmarshalParameters(data)
	}
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == pemTypeParameters {
			return unmarshalParameters(block.Bytes)
		}
		data = rest
	}
	return nil, errors.New("no DSA PARAMETERS block found")
}

func writeParameters(w io.Writer, format Format, params *dsa.Parameters) error {
	der, err := marshalParameters(params)
	if err != nil {
		return err
	}
	if format == FormatPEM {
		return pem.Encode(w, &pem.Block{Type: pemTypeParameters, Bytes: der})
	}
	_, err = w.Write(der)
	return err
}

func marshalPrivateKey(key *dsa.PrivateKey) ([]byte, error) {
	return asn1.Marshal(dsaPrivateKey{
		P:    key.P,
		Q:    key.Q,
		G:    key.G,
		Pub:  key.Y,
		Priv: key.X,
	})
}

// writePrivateKey emits the traditional private key encoding. The stream
// must have been opened for private material.
func writePrivateKey(out *outStream, format Format, key *dsa.PrivateKey) error {
	if !out.private {
		return errors.New("private key output requires an owner-only stream")
	}
	der, err := marshalPrivateKey(key)
	if err != nil {
		return err
	}
	if format == FormatPEM {
		return pem.Encode(out, &pem.Block{Type: pemTypePrivateKey, Bytes: der})
	}
	_, err = out.Write(der)
	return err
}
