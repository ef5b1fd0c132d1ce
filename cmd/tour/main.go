package main

import "github.com/gwillis-inovacon/discourse-onboarding-tour/internal/cli"

func main() {
	cli.Execute()
}
