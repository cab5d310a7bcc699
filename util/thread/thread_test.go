package thread

import (
    "testing"
    "context"
    "errors"
)

func TestBasic(test *testing.T){
    quit, cancel := context.WithCancel(context.Background())
    defer cancel()
    group := NewThreadGroup(quit)

    var x int

    group.Spawn(func(quit context.Context) error {
        for i := 0; i < 10; i++ {
            x += 1
        }
        return nil
    })

    err := group.Wait()

    if err != nil {
        test.Fatalf("unexpected error %v", err)
    }
    if x != 10 {
        test.Fatalf("expected x to be 10 but was %v", x)
    }
}

func TestErrorCancels(test *testing.T){
    group := NewThreadGroup(context.Background())
    bad := errors.New("audio device failed")

    group.Spawn(func(quit context.Context) error {
        <-quit.Done()
        return nil
    })

    group.Spawn(func(quit context.Context) error {
        return bad
    })

    err := group.Wait()
    if !errors.Is(err, bad) {
        test.Fatalf("expected the first error but got %v", err)
    }
}

func TestSubGroup(test *testing.T){
    group := NewThreadGroup(context.Background())
    sub := group.SubGroup()

    done := false
    sub.Spawn(func(quit context.Context) error {
        <-quit.Done()
        done = true
        return nil
    })

    group.Cancel()
    group.Wait()

    if !done {
        test.Fatalf("the parent group should wait for the sub group")
    }
}
