// Package extractor turns scraped exam pages into normalized question
// records. It locates question blocks inside an HTML document, sanitizes
// the markup of each block down to a small tag set, and rewrites plain-text
// math notation (fractions, roots, subscripts, Greek letters, vector and
// degree markers) into \(...\)-delimited LaTeX.
//
// Basic usage:
//
//	ex := extractor.NewExtractor()
//	res, err := ex.Extract(ctx, extractor.Input{HTML: page})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, q := range res.Questions {
//		fmt.Println(q.Number, q.Subject)
//	}
//
// Extraction is batch-tolerant: a malformed question block is counted in
// Result.Skipped rather than failing the run.
package extractor
