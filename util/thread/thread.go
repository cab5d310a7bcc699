package thread

import (
    "sync"
    "context"
)

/* A set of goroutines that share one cancellable context. The first
 * goroutine to fail cancels the rest, and Wait returns its error.
 */
type ThreadGroup struct {
    wait sync.WaitGroup
    quit context.Context
    cancel context.CancelFunc

    lock sync.Mutex
    err error
}

type ThreadFunc func(quit context.Context) error

func NewThreadGroup(parent context.Context) *ThreadGroup {
    quit, cancel := context.WithCancel(parent)
    return &ThreadGroup{
        quit: quit,
        cancel: cancel,
    }
}

/* a group of its own that the current group waits on */
func (group *ThreadGroup) SubGroup() *ThreadGroup {
    out := NewThreadGroup(group.quit)

    group.Spawn(func(quit context.Context) error {
        <-out.quit.Done()
        return out.Wait()
    })

    return out
}

func (group *ThreadGroup) fail(err error){
    group.lock.Lock()
    if group.err == nil {
        group.err = err
    }
    group.lock.Unlock()
    group.cancel()
}

func (group *ThreadGroup) Spawn(f ThreadFunc) {
    group.wait.Add(1)
    go func(){
        defer group.wait.Done()
        err := f(group.quit)
        if err != nil {
            group.fail(err)
        }
    }()
}

func (group *ThreadGroup) Cancel(){
    group.cancel()
}

func (group *ThreadGroup) Context() context.Context {
    return group.quit
}

func (group *ThreadGroup) Done() <-chan struct{} {
    return group.quit.Done()
}

/* blocks until every goroutine returns, then reports the first error */
func (group *ThreadGroup) Wait() error {
    group.wait.Wait()
    group.cancel()

    group.lock.Lock()
    defer group.lock.Unlock()
    return group.err
}
