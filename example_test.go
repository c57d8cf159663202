package rebel_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/oagudo/rebel"
	"github.com/oagudo/rebel/drivers/sqlite"
)

func Example() {
	ctx := context.Background()
	driver := sqlite.Memory()
	defer driver.Close()

	db := rebel.New(driver)

	_ = db.Execute(ctx, "CREATE TABLE cities (id INTEGER PRIMARY KEY AUTOINCREMENT, name VARCHAR(254))")
	_ = db.Execute(ctx, "INSERT INTO cities (name) VALUES (?), (?)", "New York", "Washington")

	city, _, _ := db.QueryOne(ctx, "SELECT id, name FROM cities WHERE name = :name", rebel.Named{"name": "Washington"})
	fmt.Println(city.Map())
	// Output: map[id:2 name:Washington]
}

func ExampleDB_Transaction() {
	ctx := context.Background()
	driver := sqlite.Memory()
	defer driver.Close()

	db := rebel.New(driver)
	_ = db.Execute(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)")

	err := db.Transaction(ctx, func(ctx context.Context) error {
		if err := db.Execute(ctx, "INSERT INTO users (id, email) VALUES (?, ?)", 1, "foo@bar.com"); err != nil {
			return err
		}
		return errors.New("email not verified")
	})
	fmt.Println(err)

	count, _, _ := db.QueryValue(ctx, "SELECT COUNT(*) FROM users")
	fmt.Println(count)
	// Output:
	// email not verified
	// 0
}

func ExampleDB_SQL() {
	ctx := context.Background()
	driver := sqlite.Memory()
	defer driver.Close()

	db := rebel.New(driver)
	_ = db.Execute(ctx, "CREATE TABLE cities (id INTEGER PRIMARY KEY, name TEXT)")

	sql := db.SQL("INSERT INTO cities (id, name) VALUES")
	for i, name := range []string{"New York", "Washington", "Los Angeles"} {
		sql.Add("(:id, :name)", rebel.Named{"id": i + 1, "name": name}).Add(",")
	}
	sql.Back()
	_ = sql.Execute(ctx)

	names, _ := db.SQL("SELECT name FROM cities").Add("WHERE id > ?", 1).Add("ORDER BY id").QueryValues(ctx)
	fmt.Println(names)
	// Output: [Washington Los Angeles]
}
