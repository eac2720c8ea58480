package reporter

import (
	"encoding/xml"
	"fmt"
)

type junitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Skipped  int              `xml:"skipped,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

type junitSkipped struct{}

func renderJUnit(summary Summary, results []Result) ([]byte, error) {
	suite := junitTestSuite{
		Name:     "lumina-e2e",
		Tests:    summary.Total,
		Failures: summary.Failed + summary.TimedOut,
		Skipped:  summary.Skipped,
		Time:     fmt.Sprintf("%.3f", summary.TotalDuration.Seconds()),
	}
	for _, res := range results {
		tc := junitTestCase{
			Name:      res.Name,
			Classname: res.Package,
			Time:      fmt.Sprintf("%.3f", res.Duration.Seconds()),
		}
		switch res.Status {
		case StatusFailed, StatusTimedOut:
			tc.Failure = &junitFailure{Message: string(res.Status), Body: res.Error}
		case StatusSkipped:
			tc.Skipped = &junitSkipped{}
		}
		suite.Cases = append(suite.Cases, tc)
	}
	doc := junitTestSuites{
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Skipped:  suite.Skipped,
		Time:     suite.Time,
		Suites:   []junitTestSuite{suite},
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
