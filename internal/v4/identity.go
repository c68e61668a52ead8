package v4

import "github.com/google/uuid"

// Identifier derivation is a pure function of v3 identity plus model
// name, so re-runs reproduce the same v4 identifiers and parallel
// workers need no coordination to avoid collisions. UUIDv5 (SHA-1 over a
// fixed namespace) gives importer-friendly identifiers with those
// properties.

var (
	instanceNamespace = uuid.MustParse("8f14b77e-23a5-5a1c-9f6e-4d1d2a7c0b31")
	nodeNamespace     = uuid.MustParse("c3a9d8e7-61f2-5b04-8c7d-90e5f4a2b618")
)

// InstanceID derives the v4 instance identifier for a v3 instance.
func InstanceID(model, v3InstanceID string) string {
	return uuid.NewSHA1(instanceNamespace, []byte(model+"\x00"+v3InstanceID)).String()
}

// NodeID derives the v4 node identifier for a v3 node. The model name
// participates so renamed models produce distinct identifier spaces.
func NodeID(model, v3InstanceID, v3NodeID string) string {
	return uuid.NewSHA1(nodeNamespace, []byte(model+"\x00"+v3InstanceID+"\x00"+v3NodeID)).String()
}
