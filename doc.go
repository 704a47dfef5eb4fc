// geomatch resolves a client's approximate location from its network
// address and ranks candidate venues (hospitals, project sites) by how
// well their geocoded locations match. The heavy lifting lives in the
// geolib package; this binary wires providers, caches and the HTTP
// surface together from an hjson config file.
package main
