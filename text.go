package main

import (
	"crypto/dsa"
	"fmt"
	"io"
	"math/big"
)

// printParametersText renders params the way openssl dsaparam -text does:
// a bit length header followed by hex dumps of p, q and g.
func printParametersText(w io.Writer, params *dsa.Parameters) error {
	if _, err := fmt.Fprintf(w, "DSA-Parameters: (%d bit)\n", params.P.BitLen()); err != nil {
		return err
	}
	values := []struct {
		label string
		val   *big.Int
	}{
		{"P", params.P},
		{"Q", params.Q},
		{"G", params.G},
	}
	for _, v := range values {
		if _, err := fmt.Fprintf(w, "%s:\n", v.label); err != nil {
			return err
		}
		if err := printHex(w, v.val); err != nil {
			return err
		}
	}
	return nil
}

// printHex writes the hex dump of n: four space indent, fifteen octets per
// line separated by colons, and a leading zero octet when the top bit is
// set so the dump reads as a positive DER integer.
func printHex(w io.Writer, n *big.Int) error {
	data := n.Bytes()
	if len(data) == 0 {
		data = []byte{0x00}
	}
	if data[0]&0x80 != 0 {
		data = append([]byte{0x00}, data...)
	}
	for i, b := range data {
		if i%15 == 0 {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "    "); err != nil {
				return err
			}
		}
		sep := ":"
		if i == len(data)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%02x%s", b, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
