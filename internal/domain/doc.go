// Package domain holds the storefront entities, users and the products they
// list. Each entity validates itself by hand, reports every failing field
// in a single ValidationError, and knows nothing about storage or HTTP.
package domain
