package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultURLs is the reference list of recipe pages scraped when no URLs
// are given.
var DefaultURLs = []string{
	"https://www.favfamilyrecipes.com/musubi/",
	"https://www.foodiecrush.com/my-moms-homemade-spaghetti-and-meat-sauce-recipe/",
	"https://playswellwithbutter.com/spam-musubi-recipe/",
	"https://www.allrecipes.com/recipe/158140/spaghetti-sauce-with-ground-beef/",
	"https://soulandstreusel.com/hawaiian-fried-garlic-chicken/",
	"https://www.thecookierookie.com/best-twice-baked-potatoes-recipe/",
	"https://southernbite.com/chicken-and-sausage-gumbo/",
	"https://hungryinthailand.com/thai-garlic-pepper-chicken/",
	"https://thisishowicook.com/thai-garlic-pepper-chicken-recipe/",
	"https://hot-thai-kitchen.com/garlic-pepper-chicken/",
	"https://pupswithchopsticks.com/pad-woon-sen/",
	"https://www.cookingwithnart.com/easy-thai-style-omelet-kai-jeow/",
	"https://www.seriouseats.com/food-lab-creamy-cheesy-ultimate-spinach-lasagna-recipe",
	"https://natashaskitchen.com/lasagna-recipe/",
	"https://www.thechunkychef.com/copycat-skyline-cincinnati-chili/",
	"https://www.browneyedbaker.com/all-american-beef-chili/",
	"https://broccyourbody.com/tom-kha-inspired-soup-with-crispy-tofu/",
	"https://sugarspunrun.com/egg-salad-recipe",
	"https://www.budgetbytes.com/louisiana-red-beans-rice/",
	"https://mykitchenserenity.com/quick-easy-red-beans-rice-sausage/",
}

// ReadURLs reads one URL per line. Blank lines and lines starting with #
// are skipped.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read urls: %w", err)
	}
	return urls, nil
}

// resolveURLs returns args if any, else the URLs listed in path, else
// DefaultURLs.
func resolveURLs(args []string, path string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if path == "" {
		return DefaultURLs, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open urls file: %w", err)
	}
	defer f.Close()

	return ReadURLs(f)
}
