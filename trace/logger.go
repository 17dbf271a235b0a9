package trace

import (
	"github.com/sirupsen/logrus"

	"github.com/b2model/blake2/blake2s"
)

// LogTracer writes compression events to a logrus logger. Block boundaries
// and round states are logged at debug level; G inputs and intermediates at
// trace level. Nothing is formatted unless the level is enabled.
type LogTracer struct {
	log *logrus.Entry
}

// NewLogTracer returns a tracer logging through l.
func NewLogTracer(l *logrus.Logger) *LogTracer {
	return &LogTracer{log: logrus.NewEntry(l).WithField("module", "blake2s")}
}

func (t *LogTracer) enabled(level logrus.Level) bool {
	return t.log.Logger.IsLevelEnabled(level)
}

func (t *LogTracer) rows(block int, label string, words []uint32) {
	for _, row := range formatVector(label, words) {
		t.log.WithField("block", block).Debug(row)
	}
}

func (t *LogTracer) CaptureCompressStart(block int, h *[8]uint32, m *[16]uint32, ctr [2]uint32, final bool, v *[16]uint32) {
	if !t.enabled(logrus.DebugLevel) {
		return
	}
	t.log.WithFields(logrus.Fields{
		"block": block,
		"t0":    ctr[0],
		"t1":    ctr[1],
		"final": final,
	}).Debug("Compressing block")
	t.rows(block, "m", m[:])
	t.log.WithField("block", block).Debug("State of v before compression")
	t.rows(block, "v", v[:])
}

func (t *LogTracer) CaptureG(block, round, index int, st *blake2s.GState) {
	if !t.enabled(logrus.TraceLevel) {
		return
	}
	t.log.WithFields(logrus.Fields{
		"block": block,
		"round": round,
		"g":     index,
	}).Tracef("G a=0x%08x b=0x%08x c=0x%08x d=0x%08x m0=0x%08x m1=0x%08x "+
		"a1=0x%08x a2=0x%08x b1=0x%08x b2=0x%08x b3=0x%08x b4=0x%08x "+
		"c1=0x%08x c2=0x%08x d1=0x%08x d2=0x%08x d3=0x%08x d4=0x%08x",
		st.A, st.B, st.C, st.D, st.M0, st.M1,
		st.A1, st.A2, st.B1, st.B2, st.B3, st.B4,
		st.C1, st.C2, st.D1, st.D2, st.D3, st.D4)
}

func (t *LogTracer) CaptureRound(block, round int, v *[16]uint32) {
	if !t.enabled(logrus.DebugLevel) {
		return
	}
	t.log.WithFields(logrus.Fields{"block": block, "round": round}).Debug("Round done")
	t.rows(block, "v", v[:])
}

func (t *LogTracer) CaptureCompressEnd(block int, v *[16]uint32, h *[8]uint32) {
	if !t.enabled(logrus.DebugLevel) {
		return
	}
	t.log.WithField("block", block).Debug("State of v after compression")
	t.rows(block, "v", v[:])
	t.rows(block, "h", h[:])
}
