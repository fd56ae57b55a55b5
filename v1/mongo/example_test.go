package mongo_test

import (
	"context"
	"fmt"

	"github.com/jeetendra29gupta/docstore/v1/mongo"
)

// Example showing direct client construction and the basic insert/find cycle.
func ExampleNewClient() {
	client, err := mongo.NewClient(mongo.Config{
		Host:       "localhost",
		Port:       27017,
		Database:   "my_first_database",
		Collection: "my_first_collection",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close(context.Background())

	ctx := context.Background()

	id, err := client.InsertOne(ctx, mongo.Document{"name": "John", "address": "Highway 37"})
	if err != nil {
		fmt.Println(err)
		return
	}

	doc, err := client.FindOne(ctx, mongo.Query{"_id": id})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(doc["address"])
}

// Example showing the partial-update contract: updates must use operator
// syntax, and a plain replacement document is rejected.
func ExampleMongoClient_UpdateOne() {
	client, err := mongo.NewClient(mongo.Config{})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close(context.Background())

	ctx := context.Background()

	// Partial update: only the address field changes.
	modified, err := client.UpdateOne(ctx,
		mongo.Query{"name": "John"},
		mongo.Update{"$set": mongo.Document{"address": "Canyon 123"}},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(modified)

	// Rejected: would silently replace the whole document.
	_, err = client.UpdateOne(ctx, mongo.Query{"name": "John"}, mongo.Update{"address": "Canyon 123"})
	fmt.Println(mongo.IsInvalidUpdateError(err))
}
