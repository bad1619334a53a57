package main

import "github.com/arceusss10/sports-news-dashboard/internal/cli"

func main() {
	cli.Execute()
}
