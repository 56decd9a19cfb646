package app

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"modescommb/internal/adsb"
	"modescommb/internal/commb"
)

const commbCacheCleanupInterval = 10 * time.Second

// commbStation decodes Comm-B (DF20/21) replies and remembers the last
// resolved register per ICAO address in a TTL cache.
type commbStation struct {
	cache  *cache.Cache
	logger *logrus.Logger
}

func newCommBStation(ttl time.Duration, logger *logrus.Logger) *commbStation {
	return &commbStation{
		cache:  cache.New(ttl, commbCacheCleanupInterval),
		logger: logger,
	}
}

// process builds a commb.Record from msg, decodes it, caches the result
// under the message's ICAO address, and returns the record. It returns nil
// for any message that isn't a DF20/21 Comm-B reply.
func (s *commbStation) process(msg *adsb.ADSBMessage) *commb.Record {
	df := msg.GetDF()
	if df != 20 && df != 21 {
		return nil
	}

	r := &commb.Record{
		MsgType:       int(df),
		DR:            int(msg.Data[1]>>3) & 0x1F,
		UM:            (int(msg.Data[1]&0x07) << 3) | int(msg.Data[2]>>5),
		AC:            int((uint16(msg.Data[2]&0x1F) << 8) | uint16(msg.Data[3])),
		CorrectedBits: msg.ErrorsCorrected,
	}
	copy(r.MB[:], msg.Data[4:11])

	commb.Decode(r)

	key := fmt.Sprint(msg.GetICAO())
	s.cache.SetDefault(key, r)

	s.logger.WithFields(logrus.Fields{
		"icao":   fmt.Sprintf("%06X", msg.GetICAO()),
		"df":     df,
		"format": r.Format.String(),
	}).Debug("Comm-B reply decoded")

	return r
}

// lastRecord returns the most recently decoded Comm-B record for icao, if
// any is still within the cache's TTL.
func (s *commbStation) lastRecord(icao uint32) (*commb.Record, bool) {
	v, found := s.cache.Get(fmt.Sprint(icao))
	if !found {
		return nil, false
	}
	r, ok := v.(*commb.Record)
	return r, ok
}
