package vff

import (
	"fmt"
	"io"

	"github.com/aligator/vff/checkpoint"
	"github.com/dsoprea/go-logging"
)

var clusterLogger = log.NewLogger("vff.cluster")

// clusterStore maps cluster numbers to byte ranges of the data region.
// It only uses positioned reads, so independent chains may be read concurrently.
type clusterStore struct {
	r           io.ReaderAt
	base        int64
	clusterSize uint32
	fat         *Table
}

// ReadCluster reads exactly one cluster. Clusters are numbered from 2.
func (s *clusterStore) ReadCluster(index uint16) ([]byte, error) {
	if index < firstCluster {
		return nil, checkpoint.Wrap(fmt.Errorf("cluster 0x%x is below the first data cluster", index), ErrChainCorruption)
	}

	offset := s.base + int64(index-firstCluster)*int64(s.clusterSize)
	buf := make([]byte, s.clusterSize)
	n, err := s.r.ReadAt(buf, offset)
	if n == len(buf) {
		// ReadAt may report io.EOF together with a complete last cluster.
		return buf, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, checkpoint.From(fmt.Errorf("could not read cluster 0x%x at offset 0x%x (%d of %d bytes): %w", index, offset, n, len(buf), err))
}

// ReadChain reads all clusters of the chain starting at start in chain order.
func (s *clusterStore) ReadChain(start uint16) ([]byte, error) {
	chain, err := s.fat.Chain(start)
	if err != nil {
		return nil, err
	}

	clusterLogger.Debugf(nil, "reading chain 0x%x: %d clusters", start, len(chain))

	data := make([]byte, 0, len(chain)*int(s.clusterSize))
	for _, index := range chain {
		cluster, err := s.ReadCluster(index)
		if err != nil {
			return nil, err
		}
		data = append(data, cluster...)
	}

	return data, nil
}
