// Package printing renders sale invoices as HTML and converts them to PDF
// through a headless Chrome instance driven by chromedp.
package printing
