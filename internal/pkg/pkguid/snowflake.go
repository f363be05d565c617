package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Epoch is the snowflake epoch in milliseconds (2026-01-01T00:00:00Z).
const Epoch int64 = 1767225600000

const maxNodeID = 1<<10 - 1

// Snowflake generates time-ordered numeric IDs.
type Snowflake struct {
	node *snowflake.Node
}

func randomNodeID() (int64, error) {
	var nodeID int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &nodeID); err != nil {
		return 0, err
	}

	return nodeID & maxNodeID, nil
}

// NewSnowflake builds a generator for nodeID. A negative nodeID picks a random
// node, which is enough for a single instance.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id %d exceeds %d", nodeID, maxNodeID)
	}
	if nodeID < 0 {
		id, err := randomNodeID()
		if err != nil {
			return nil, err
		}
		nodeID = id
	}

	snowflake.Epoch = Epoch

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

// Time returns when id was generated.
func Time(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
