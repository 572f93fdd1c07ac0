package main

import (
	"github.com/starshine-sys/sentinel/cmd"
	"github.com/starshine-sys/sentinel/common"
)

func main() {
	err := cmd.Run()
	if err != nil {
		common.Log.Fatal(err)
	}
}
