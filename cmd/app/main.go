package main

import (
	"context"

	"github.com/scarevision/casebook/internal/service"
)

func main() {
	ctx := context.Background()

	svc, err := service.NewCasebookService()
	if err != nil {
		panic(err)
	}

	err = svc.Start(ctx)
	if err != nil {
		panic(err)
	}
}
