/*Package interval holds the coordinate type and BED plumbing shared by the
  bedgraph reader and the peak caller: a whitespace tokenizer for BED-like
  lines, region strings, and an interval-union used as an exclusion mask.
  (Note the 'union'.  Overlapping mask intervals are merged, not tracked
  separately.)
  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
