// Package snapshot stores live runs: in redis for a deployed server, in memory otherwise.
package snapshot

import (
	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"go.mongodb.org/mongo-driver/bson"
)

func encode(run *dmn.Run) ([]byte, error) {
	return bson.Marshal(run)
}

func decode(data []byte) (*dmn.Run, error) {
	var run dmn.Run
	if err := bson.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}
