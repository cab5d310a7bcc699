package main

import (
    "flag"
    "log"
    "os"

    aputest "github.com/kazzmir/nesapu/test/all-test/apu-test"
    test_utils "github.com/kazzmir/nesapu/test/all-test/utils"
)

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    debug := flag.Bool("debug", false, "log each scenario as it runs")
    flag.Parse()

    ok, err := aputest.Run(*debug)
    if err != nil {
        log.Printf("Error: aputest failed with an error: %v", err)
        os.Exit(1)
    }

    if ok {
        log.Printf(test_utils.Success("aputest"))
    } else {
        log.Printf(test_utils.Failure("aputest"))
        os.Exit(1)
    }
}
