package system

// Priority orders systems within a single tick. Lower values run first;
// equal priorities keep registration order.
type Priority int

const (
	PriorityTasks   Priority = -1000 // resume coroutines before anything reads their effects
	PriorityTime    Priority = -500  // on_update dispatch
	PriorityDefault Priority = 0     // movement, seeking
	PriorityClip    Priority = 100   // after everything that moves things
	PriorityRaster  Priority = 900   // compose the screen buffer
	PriorityWin     Priority = 1000  // inspect the composed buffer last
)

// System is the interface every processor implements. dt is the frame
// delta in seconds.
type System interface {
	Update(dt float64) Signal
}

// Func adapts a plain function to System.
type Func func(dt float64) Signal

func (f Func) Update(dt float64) Signal { return f(dt) }
