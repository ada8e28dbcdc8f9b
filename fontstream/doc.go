/*
Package fontstream provides the raw data streams a typeface is built from.

A font is given by one or two streams: the font program itself and, for
Type 1 fonts, an optional metrics file (AFM). Sources are random access
readers with a declared size; bytes.Reader, strings.Reader and
io.SectionReader qualify, files are opened with OpenFile.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontstream
