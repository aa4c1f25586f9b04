package selection

// ScrollUnit 滚轮事件的粒度
type ScrollUnit int

const (
	// ScrollLine 按行滚动（普通鼠标滚轮）
	ScrollLine ScrollUnit = iota
	// ScrollPixel 按像素滚动（触控板等高精度设备）
	ScrollPixel
)

func (u ScrollUnit) String() string {
	if u == ScrollPixel {
		return "pixel"
	}
	return "line"
}

// ScrollEvent 一条原始滚轮事件，Delta 带符号
type ScrollEvent struct {
	Unit  ScrollUnit
	Delta float64
}

// DefaultPixelThreshold 像素滚动累计到超过该值才产生一步
const DefaultPixelThreshold = 16.0

// ScrollAccumulator 把两种粒度的滚轮输入统一为离散的步进信号
//
//   - 行事件：每个非零事件对应 ±1，同一帧内最后一个非零事件决定方向
//   - 像素事件：跨帧累加，|累计值| 超过阈值时产生一步并清零
//   - 同一帧内只要出现行事件，本帧的像素事件全部丢弃，累计值清零
type ScrollAccumulator struct {
	threshold float64
	acc       float64
}

// NewScrollAccumulator 创建累加器，threshold <= 0 时使用默认值
func NewScrollAccumulator(threshold float64) *ScrollAccumulator {
	if threshold <= 0 {
		threshold = DefaultPixelThreshold
	}
	return &ScrollAccumulator{threshold: threshold}
}

// Step 消费一帧的滚轮事件，返回 -1、0 或 +1
func (s *ScrollAccumulator) Step(events []ScrollEvent) int {
	sawLine := false
	lineStep := 0
	pixelSum := 0.0

	for _, ev := range events {
		switch ev.Unit {
		case ScrollLine:
			sawLine = true
			if ev.Delta > 0 {
				lineStep = 1
			} else if ev.Delta < 0 {
				lineStep = -1
			}
		case ScrollPixel:
			pixelSum += ev.Delta
		}
	}

	if sawLine {
		s.acc = 0
		return lineStep
	}

	s.acc += pixelSum
	switch {
	case s.acc > s.threshold:
		s.acc = 0
		return 1
	case s.acc < -s.threshold:
		s.acc = 0
		return -1
	}
	return 0
}

// Accumulated 当前像素累计值
func (s *ScrollAccumulator) Accumulated() float64 {
	return s.acc
}

// Threshold 像素阈值
func (s *ScrollAccumulator) Threshold() float64 {
	return s.threshold
}

// Reset 清空累计值
func (s *ScrollAccumulator) Reset() {
	s.acc = 0
}
