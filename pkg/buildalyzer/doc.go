// Package buildalyzer extracts per-target-framework build facts from a
// build-engine event stream: compiler arguments, source files, references,
// and package dependencies for one project.
//
// Quick start:
//
//	a := buildalyzer.New("/src/app/app.csproj")
//
//	f, err := os.Open("build.ndjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	builds, _ := a.AnalyzeLog(f)
//	for _, b := range builds {
//	    fmt.Println(b.TargetFramework, len(b.SourceFiles))
//	}
//
// Each analysis aggregates from scratch, so one Analyzer can be reused
// across repeated builds of the same project.
package buildalyzer
