// Package peerlog extracts candidate IP addresses from peer-discovery
// log files. A line is free-form UTF-8 text which may or may not
// contain a dotted-quad address somewhere inside; everything around
// the address (timestamps, ports, prose) is ignored.
package peerlog

import (
	"bufio"
	"io"
	"regexp"
)

var addressRegexp = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)

// Reader is a wrapper over bufio.Scanner which yields one IP address
// per log line containing one. Only the first address of a line is
// taken.
type Reader struct {
	scanner *bufio.Scanner
}

// Read returns the next extracted address. io.EOF signals the end of
// the log; lines without an address are skipped, not reported.
func (r *Reader) Read() (string, error) {
	for r.scanner.Scan() {
		if ip := addressRegexp.FindString(r.scanner.Text()); ip != "" {
			return ip, nil
		}
	}

	if err := r.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

// ReadAll drains the reader, dropping duplicates and preserving
// first-seen order.
func (r *Reader) ReadAll() ([]string, error) {
	seen := map[string]struct{}{}
	ips := []string{}

	for {
		ip, err := r.Read()

		switch {
		case err == io.EOF:
			return ips, nil
		case err != nil:
			return ips, err
		}

		if _, ok := seen[ip]; ok {
			continue
		}

		seen[ip] = struct{}{}
		ips = append(ips, ip)
	}
}

// Extract pulls the first address out of a single line.
func Extract(line string) (string, bool) {
	ip := addressRegexp.FindString(line)

	return ip, ip != ""
}

// NewReader converts the given io.Reader instance into a Reader.
func NewReader(source io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(source),
	}
}
