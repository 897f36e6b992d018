package discovery

import "strings"

// BridgeInfo is the decoded TXT record set of a bridge announcement.
type BridgeInfo struct {
	BridgeID string
	ModelID  string
}

// DecodeBridgeTXT extracts bridge info from raw TXT strings. Records are
// "key=value" pairs; unknown keys are ignored. The bridge ID is required
// and normalized to lowercase.
func DecodeBridgeTXT(txt []string) (*BridgeInfo, error) {
	info := &BridgeInfo{}
	for _, record := range txt {
		key, value, ok := strings.Cut(record, "=")
		if !ok {
			return nil, ErrInvalidTXTRecord
		}
		switch strings.ToLower(key) {
		case TXTKeyBridgeID:
			info.BridgeID = strings.ToLower(value)
		case TXTKeyModelID:
			info.ModelID = value
		}
	}

	if info.BridgeID == "" {
		return nil, ErrMissingBridgeID
	}
	if len(info.BridgeID) != BridgeIDLength || !isHexString(info.BridgeID) {
		return nil, ErrInvalidTXTRecord
	}
	return info, nil
}

func isHexString(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
