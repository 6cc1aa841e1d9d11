package rioapi

import (
	"net/url"

	"github.com/riskibarqy/rio-stats/internal/domain/webstats"
	"github.com/valyala/bytebufferpool"
)

// encodeParams keeps the given order and repeats multi-valued keys, so equal
// queries always produce the same cache key.
func encodeParams(params []webstats.Param) string {
	if len(params) == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, p := range params {
		if i > 0 {
			_ = buf.WriteByte('&')
		}
		_, _ = buf.WriteString(url.QueryEscape(p.Key))
		_ = buf.WriteByte('=')
		_, _ = buf.WriteString(url.QueryEscape(p.Value))
	}
	return buf.String()
}
